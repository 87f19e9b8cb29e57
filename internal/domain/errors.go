package domain

import "errors"

var (
	// ErrInvalidProfile marks a taxpayer profile that cannot be computed
	ErrInvalidProfile = errors.New("invalid taxpayer profile")
	// ErrUnknownAssetType marks a capital gain whose asset type is not in the catalog
	ErrUnknownAssetType = errors.New("unknown asset type")
)
