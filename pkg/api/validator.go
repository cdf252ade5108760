package api

import (
	"errors"
	"math"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

const maxPathIDLen = 64

func (p PixelView) valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p ViewportPayload) Validate() error {
	if !(PixelView{X: p.X, Y: p.Y}).valid() {
		return errors.New("viewport must be a finite point")
	}
	return nil
}

func (p FindPathPayload) Validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if len(p.ID) > maxPathIDLen {
		return errors.New("id too long")
	}
	if !p.Start.valid() || !p.End.valid() {
		return errors.New("start and end must be finite points")
	}
	return nil
}
