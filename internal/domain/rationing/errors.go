package rationing

import (
	"errors"
	"fmt"

	"github.com/rationshop/backend/internal/domain/shared"
)

// RejectionKind classifies why an order could not be placed
type RejectionKind string

const (
	KindCartMismatch        RejectionKind = "CartMismatch"
	KindRegionMismatch      RejectionKind = "RegionMismatch"
	KindRegionNotFound      RejectionKind = "RegionNotFound"
	KindGlobalLimitNotSet   RejectionKind = "GlobalLimitNotSet"
	KindGlobalLimitExceeded RejectionKind = "GlobalLimitExceeded"
	KindRegionLimitExceeded RejectionKind = "RegionLimitExceeded"
)

// Domain error codes for order rejections and rationing configuration
const (
	CodeCartMismatch        = "CART_MISMATCH"
	CodeRegionMismatch      = "REGION_MISMATCH"
	CodeRegionNotFound      = "REGION_NOT_FOUND"
	CodeGlobalLimitNotSet   = "GLOBAL_LIMIT_NOT_SET"
	CodeGlobalLimitExceeded = "GLOBAL_LIMIT_EXCEEDED"
	CodeRegionLimitExceeded = "REGION_LIMIT_EXCEEDED"

	CodeInvalidRegionAccess = "INVALID_REGION_ACCESS"
	CodeInvalidRegionName   = "INVALID_REGION_NAME"
	CodeInvalidRegionLimit  = "INVALID_REGION_LIMIT"
	CodeInvalidGlobalLimit  = "INVALID_GLOBAL_LIMIT"
	CodeRegionNameExists    = "REGION_NAME_EXISTS"
	CodeRegionInUse         = "REGION_IN_USE"
)

var (
	ErrCartMismatch        = shared.NewDomainError(CodeCartMismatch, "Cart does not belong to user or does not exist.")
	ErrRegionMismatch      = shared.NewDomainError(CodeRegionMismatch, "Cart and order regions don't match.")
	ErrRegionNotFound      = shared.NewDomainError(CodeRegionNotFound, "Region does not exist.")
	ErrGlobalLimitNotSet   = shared.NewDomainError(CodeGlobalLimitNotSet, "Global limit not set.")
	ErrGlobalLimitExceeded = shared.NewDomainError(CodeGlobalLimitExceeded, "Global limit exceeded.")

	ErrRegionAccessConflict = shared.NewDomainError(CodeInvalidRegionAccess, "Region cannot have closed and unlimited access at the same time.")
	ErrRegionNameExists     = shared.NewDomainError(CodeRegionNameExists, "Region with this name already exists.")
	ErrRegionInUse          = shared.NewDomainError(CodeRegionInUse, "Region is referenced by carts or orders.")
)

// NewRegionLimitExceeded returns the rejection for a closed or exhausted region
func NewRegionLimitExceeded(regionName string) *shared.DomainError {
	return shared.NewDomainError(CodeRegionLimitExceeded, fmt.Sprintf("Region %s: closed or limit exceeded.", regionName))
}

var kindsByCode = map[string]RejectionKind{
	CodeCartMismatch:        KindCartMismatch,
	CodeRegionMismatch:      KindRegionMismatch,
	CodeRegionNotFound:      KindRegionNotFound,
	CodeGlobalLimitNotSet:   KindGlobalLimitNotSet,
	CodeGlobalLimitExceeded: KindGlobalLimitExceeded,
	CodeRegionLimitExceeded: KindRegionLimitExceeded,
}

// KindOf extracts the rejection kind carried by err, if any
func KindOf(err error) (RejectionKind, bool) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return "", false
	}
	kind, ok := kindsByCode[domainErr.Code]
	return kind, ok
}

// IsRationingRejection reports whether err was raised by a limit check inside the order transaction
func IsRationingRejection(err error) bool {
	kind, ok := KindOf(err)
	if !ok {
		return false
	}
	switch kind {
	case KindGlobalLimitNotSet, KindGlobalLimitExceeded, KindRegionLimitExceeded:
		return true
	default:
		return false
	}
}
