package sitekit

import "errors"

// Sentinel errors for library operations.
var (
	ErrReadData      = errors.New("reading card data failed")
	ErrParseData     = errors.New("parsing card data failed")
	ErrNoCards       = errors.New("no cards found")
	ErrDuplicateCard = errors.New("duplicate card id")

	ErrImageNotFound    = errors.New("image not found")
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrRasterize        = errors.New("SVG rasterization failed")

	ErrHTMLRender     = errors.New("HTML rendering failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	ErrInvalidPageSize  = errors.New("invalid page size")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrStyleNotFound    = errors.New("style not found")
)
