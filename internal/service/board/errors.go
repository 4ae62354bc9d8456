package board

import "errors"

var ErrClosed = errors.New("board is closed")
