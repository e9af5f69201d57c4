package heatpump

import "errors"

var (
	ErrInvalidModel           = errors.New("invalid heat pump model")
	ErrInvalidMode            = errors.New("invalid operating mode")
	ErrInvalidBuildingQuality = errors.New("invalid building quality")
	ErrInvalidSeason          = errors.New("invalid season")
	ErrOutOfDomain            = errors.New("parameter out of domain")
)
