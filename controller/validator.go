package controller

import (
	"fmt"

	"github.com/milbus/go-1553/m1553"
)

// MaxTransactionWordCount is the protocol limit on data words per
// transaction.
const MaxTransactionWordCount = 32

// Pure message-validation functions checking protocol range contracts.
// They hold no state and are independent of any BusController instance.

// ValidateAddress checks that addr is a legal terminal address [0, 31].
// All values in range are accepted; 31 is broadcast and 0/31 sub-address
// conventions are the caller's concern.
func ValidateAddress(addr uint8) error {
	_, err := m1553.NewAddress(addr)

	return err
}

// ValidateWordCount checks the per-transaction data word limit.
func ValidateWordCount(count int) error {
	if count < 0 || count > MaxTransactionWordCount {
		return fmt.Errorf("%w: word count %d exceeds maximum of %d", ErrValidation, count, MaxTransactionWordCount)
	}

	return nil
}

// ValidateSubAddress checks that sub is within the 5-bit sub-address range
// [0, 31]. Values 0 and 31 are conventionally reserved for mode-code
// signaling but pass validation; reserved-value handling is a documented
// limitation.
func ValidateSubAddress(sub uint8) error {
	if sub > 31 {
		return fmt.Errorf("%w: sub-address %d out of range [0, 31]", ErrValidation, sub)
	}

	return nil
}
