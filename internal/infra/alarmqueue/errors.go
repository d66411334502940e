package alarmqueue

import "errors"

var ErrQueueClosed = errors.New("alarm queue is closed")
