package renderer

import "image"

// Tile is a rectangular region of the image rendered as one unit of work.
// Each tile carries its own RNG seed derived from the base seed and the
// tile ID, so the rendered output is independent of worker count and
// scheduling order.
type Tile struct {
	ID     int
	Bounds image.Rectangle
	Seed   int64
}

// NewTileGrid partitions a width x height image into tiles of at most
// tileSize x tileSize pixels, in row-major order
func NewTileGrid(width, height, tileSize int, baseSeed int64) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0 := tx * tileSize
			y0 := ty * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			id := ty*tilesX + tx
			tiles = append(tiles, &Tile{
				ID:     id,
				Bounds: image.Rect(x0, y0, x1, y1),
				Seed:   baseSeed + int64(id) + 1,
			})
		}
	}

	return tiles
}
