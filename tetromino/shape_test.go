package tetromino_test

import (
	"fmt"
	"testing"

	"github.com/plus3/blockfall/tetromino"
	"github.com/stretchr/testify/assert"
)

func TestCatalog(t *testing.T) {
	shapes := tetromino.Catalog()
	assert.Len(t, shapes, tetromino.KindCount)

	for i, shape := range shapes {
		t.Run(shape.Kind().String(), func(t *testing.T) {
			assert.Equal(t, tetromino.Kind(i), shape.Kind())

			seen := make(map[tetromino.Coord]bool)
			for _, cell := range shape.Cells() {
				assert.GreaterOrEqual(t, cell.Row, 0)
				assert.GreaterOrEqual(t, cell.Col, 0)
				assert.Less(t, cell.Row, shape.Rows())
				assert.Less(t, cell.Col, shape.Cols())
				seen[cell] = true
			}
			assert.Len(t, seen, tetromino.CellCount, "cells must be distinct")
			assert.True(t, shape.Color().Solid())
		})
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	shapes := tetromino.Catalog()
	shapes[0] = tetromino.Of(tetromino.KindO)

	assert.Equal(t, tetromino.KindI, tetromino.Of(tetromino.KindI).Kind())
	assert.Equal(t, tetromino.KindI, tetromino.Catalog()[0].Kind())
}

func TestRotateSwapsExtent(t *testing.T) {
	i := tetromino.Of(tetromino.KindI)

	left := i.Rotate(tetromino.Left)
	assert.Equal(t, 1, left.Rows())
	assert.Equal(t, 4, left.Cols())
	assert.ElementsMatch(t,
		[]tetromino.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3}},
		left.Cells())

	right := i.Rotate(tetromino.Right)
	assert.Equal(t, 1, right.Rows())
	assert.Equal(t, 4, right.Cols())
	assert.ElementsMatch(t, left.Cells(), right.Cells())
}

func TestRotateT(t *testing.T) {
	// .#.
	// ###
	shape := tetromino.Of(tetromino.KindT)

	// #.
	// ##
	// #.
	right := shape.Rotate(tetromino.Right)
	assert.Equal(t, 3, right.Rows())
	assert.Equal(t, 2, right.Cols())
	assert.ElementsMatch(t,
		[]tetromino.Coord{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
		right.Cells())

	// .#
	// ##
	// .#
	left := shape.Rotate(tetromino.Left)
	assert.ElementsMatch(t,
		[]tetromino.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
		left.Cells())
}

func TestRotationRoundTrip(t *testing.T) {
	for _, shape := range tetromino.Catalog() {
		t.Run(shape.Kind().String(), func(t *testing.T) {
			assert.Equal(t, shape, shape.Rotate(tetromino.Left).Rotate(tetromino.Right))
			assert.Equal(t, shape, shape.Rotate(tetromino.Right).Rotate(tetromino.Left))

			left, right := shape, shape
			for range 4 {
				left = left.Rotate(tetromino.Left)
				right = right.Rotate(tetromino.Right)
			}
			assert.Equal(t, shape.Rows(), left.Rows())
			assert.Equal(t, shape.Cols(), left.Cols())
			assert.ElementsMatch(t, shape.Cells(), left.Cells())
			assert.ElementsMatch(t, shape.Cells(), right.Cells())
		})
	}
}

func TestPieceCells(t *testing.T) {
	piece := tetromino.Piece{Shape: tetromino.Of(tetromino.KindO), Anchor: tetromino.Coord{Row: 3, Col: 4}}

	assert.ElementsMatch(t,
		[]tetromino.Coord{{Row: 3, Col: 4}, {Row: 3, Col: 5}, {Row: 4, Col: 4}, {Row: 4, Col: 5}},
		piece.Cells())
	assert.True(t, piece.Covers(tetromino.Coord{Row: 4, Col: 5}))
	assert.False(t, piece.Covers(tetromino.Coord{Row: 5, Col: 5}))

	moved := piece.Shifted(1, -1)
	assert.Equal(t, tetromino.Coord{Row: 4, Col: 3}, moved.Anchor)
	assert.Equal(t, tetromino.Coord{Row: 3, Col: 4}, piece.Anchor, "shifting must not mutate the original")
}

func TestKindColorMapping(t *testing.T) {
	for k := range tetromino.Kind(tetromino.KindCount) {
		kind, ok := tetromino.KindOfColor(k.Color())
		assert.True(t, ok)
		assert.Equal(t, k, kind)

		parsed, ok := tetromino.ParseKind(k.String()[0])
		assert.True(t, ok)
		assert.Equal(t, k, parsed)
	}

	_, ok := tetromino.KindOfColor(tetromino.ColorNone)
	assert.False(t, ok)
	_, ok = tetromino.ParseKind('X')
	assert.False(t, ok)
}

func ExampleShape_Rotate() {
	l := tetromino.Of(tetromino.KindL)
	fmt.Println(l)
	fmt.Println(l.Rotate(tetromino.Left))
	fmt.Println(l.Rotate(tetromino.Right))

	// Output:
	// L[#./#./##]
	// L[..#/###]
	// L[###/#..]
}
