package telegram

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"mask-labeler/internal/domain/entity"
)

// ParseQuad разбирает восемь целых "x0 y0 x1 y1 x2 y2 x3 y3"; запятые допускаются как разделители.
func ParseQuad(args string) (entity.Quad, error) {
	fields := strings.Fields(strings.ReplaceAll(args, ",", " "))
	if len(fields) != 8 {
		return entity.Quad{}, fmt.Errorf("expected 8 coordinates, got %d", len(fields))
	}

	var quad entity.Quad
	for i := range quad {
		x, err := strconv.Atoi(fields[2*i])
		if err != nil {
			return entity.Quad{}, fmt.Errorf("point %d: %w", i, err)
		}
		y, err := strconv.Atoi(fields[2*i+1])
		if err != nil {
			return entity.Quad{}, fmt.Errorf("point %d: %w", i, err)
		}
		quad[i] = image.Pt(x, y)
	}
	return quad, nil
}
