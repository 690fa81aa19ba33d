package shell

import (
	"math"
	"strconv"
)

// Status is a command result. Negative values are failures, zero is success.
type Status int8

const (
	StatusUnknown    Status = math.MinInt8
	StatusUnexpected Status = math.MinInt8 + 1
	StatusUnknownCmd Status = math.MinInt8 + 2

	// Command-specific failure codes, echoed in the status line.
	StatusFail8 Status = -8
	StatusFail7 Status = -7
	StatusFail6 Status = -6
	StatusFail5 Status = -5
	StatusFail4 Status = -4
	StatusFail3 Status = -3

	StatusBadArg  Status = -2
	StatusFail    Status = -1
	StatusOK      Status = 0
	StatusOKQuiet Status = 1 // success without a status line
)

func (s Status) Failed() bool { return s < 0 }

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusUnexpected:
		return "unexpected"
	case StatusUnknownCmd:
		return "unknown command"
	case StatusBadArg:
		return "bad argument"
	case StatusFail:
		return "fail"
	case StatusOK:
		return "ok"
	case StatusOKQuiet:
		return "ok (quiet)"
	}
	if s < 0 {
		return "fail " + strconv.Itoa(int(s))
	}
	return "ok " + strconv.Itoa(int(s))
}
