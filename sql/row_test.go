package sql

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowsToCursorEmpty(t *testing.T) {
	require := require.New(t)
	ctx := NewEmptyContext()

	c := RowsToCursor(nil)
	r, err := c.Next(ctx)
	require.Equal(io.EOF, err)
	require.Nil(r)

	r, err = c.Next(ctx)
	require.Equal(io.EOF, err)
	require.Nil(r)

	err = c.Close(ctx)
	require.NoError(err)
}

func TestRowsToCursor(t *testing.T) {
	require := require.New(t)
	ctx := NewEmptyContext()

	c := RowsToCursor(Schema{{Name: "a"}}, NewRow(1), NewRow(2), NewRow(3))
	require.Equal(Schema{{Name: "a"}}, c.Schema())

	r, err := c.Next(ctx)
	require.NoError(err)
	require.Equal(NewRow(1), r)

	r, err = c.Next(ctx)
	require.NoError(err)
	require.Equal(NewRow(2), r)

	r, err = c.Next(ctx)
	require.NoError(err)
	require.Equal(NewRow(3), r)

	r, err = c.Next(ctx)
	require.Equal(io.EOF, err)
	require.Nil(r)

	r, err = c.Next(ctx)
	require.Equal(io.EOF, err)
	require.Nil(r)

	err = c.Close(ctx)
	require.NoError(err)
}

type failingCursor struct {
	closed bool
}

func (c *failingCursor) Schema() Schema {
	return nil
}

func (c *failingCursor) Next(*Context) (Row, error) {
	return nil, errors.New("boom")
}

func (c *failingCursor) Close(*Context) error {
	c.closed = true
	return nil
}

func TestCursorToRows(t *testing.T) {
	require := require.New(t)
	ctx := NewEmptyContext()

	rows, err := CursorToRows(ctx, RowsToCursor(nil, NewRow(1, "a"), NewRow(2, "b")))
	require.NoError(err)
	require.Equal([]Row{NewRow(1, "a"), NewRow(2, "b")}, rows)

	c := &failingCursor{}
	_, err = CursorToRows(ctx, c)
	require.Error(err)
	require.True(c.closed)
}

func TestRowGetValue(t *testing.T) {
	require := require.New(t)

	row := NewRow(int64(1), "a", nil)

	v, err := row.GetValue(1)
	require.NoError(err)
	require.Equal(int64(1), v)

	v, err = row.GetValue(3)
	require.NoError(err)
	require.Nil(v)

	_, err = row.GetValue(0)
	require.Error(err)
	require.True(ErrInvalidColumnIndex.Is(err))

	_, err = row.GetValue(4)
	require.Error(err)
	require.True(ErrInvalidColumnIndex.Is(err))
}

func TestRowCopy(t *testing.T) {
	require := require.New(t)

	row := NewRow(1, "a")
	cp := row.Copy()
	cp[0] = 2
	require.Equal(NewRow(1, "a"), row)
	require.Equal("[1,a]", FormatRow(row))
	require.Equal("[2,a]", FormatRow(cp))
	require.Equal("[]", FormatRow(nil))
}
