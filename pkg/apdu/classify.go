package apdu

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Category groups status words by the action a caller can take.
type Category int

const (
	CategoryUnknown Category = iota
	CategorySuccess
	CategoryAppNotRunning
	CategoryInsNotAvailable
	CategoryInvalidStatus
)

func (c Category) String() string {
	switch c {
	case CategorySuccess:
		return "Success"
	case CategoryAppNotRunning:
		return "AppNotRunning"
	case CategoryInsNotAvailable:
		return "InsNotAvailable"
	case CategoryInvalidStatus:
		return "InvalidStatus"
	default:
		return "Unknown"
	}
}

// Message returns the text shown to users for the category.
func (c Category) Message() string {
	switch c {
	case CategorySuccess:
		return "Success"
	case CategoryAppNotRunning:
		return "Cardano App is not installed or not running on the Ledger."
	case CategoryInsNotAvailable:
		return "Instruction not available on this build."
	case CategoryInvalidStatus:
		return "Invalid Status"
	default:
		return "Unknown Error"
	}
}

// Category maps the status word onto its Category.
func (sw StatusWord) Category() Category {
	switch sw {
	case SW_NO_ERROR:
		return CategorySuccess
	case SW_ERR_APP_NOT_RUNNING:
		return CategoryAppNotRunning
	case SW_ERR_INS_NOT_AVAILABLE:
		return CategoryInsNotAvailable
	default:
		return CategoryInvalidStatus
	}
}

// Classification is the user-facing reading of a failure.
// HasStatus is false when no status word could be recovered.
type Classification struct {
	Status    StatusWord
	HasStatus bool
	Category  Category
}

func (c Classification) String() string {
	if !c.HasStatus {
		return c.Category.Message()
	}
	return "0x" + c.Status.Hex() + ": " + c.Category.Message()
}

var trailingStatus = regexp.MustCompile(`(?m)([0-9A-F]{4})$`)

// ClassifyMessage extracts the status word from the last four hex characters of a response or
// error message. Messages without one, or ending in 0000, classify as unknown.
func ClassifyMessage(msg string) Classification {
	match := trailingStatus.FindString(strings.ToUpper(msg))
	if match == "" || match == "0000" {
		return Classification{Category: CategoryUnknown}
	}

	v, err := strconv.ParseUint(match, 16, 16)
	if err != nil {
		return Classification{Category: CategoryUnknown}
	}

	sw := StatusWord(v)
	return Classification{Status: sw, HasStatus: true, Category: sw.Category()}
}

// Classify reads an error returned by this package. Status errors are classified from their
// status word, anything else (typically a transport rejection) from its message.
func Classify(err error) Classification {
	if err == nil {
		return Classification{Status: SW_NO_ERROR, HasStatus: true, Category: CategorySuccess}
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return Classification{Status: statusErr.Status, HasStatus: true, Category: statusErr.Category()}
	}

	if errors.Is(err, ErrValidation) || errors.Is(err, ErrDecode) {
		return Classification{Category: CategoryUnknown}
	}

	return ClassifyMessage(err.Error())
}
