package libhyper_test

import (
	"bytes"
	"testing"

	"github.com/2x3systems/hypergraph/hyper"
	"github.com/2x3systems/hypergraph/libhyper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodingRoundTrip(t *testing.T) {
	f := libhyper.NewBox("f", x.L(), x.Tensor(y.R().R()))
	d := mustThen(t, mustCap(t, x, x.R()), libhyper.Id(x).Tensor(libhyper.Spider(1, 1, x.R())))
	d = d.Tensor(f.Dagger(), libhyper.Spider(0, 0, z))

	buf, err := d.MarshalBinary()
	require.NoError(t, err)

	d2, err := libhyper.UnmarshalDiagram(buf)
	require.NoError(t, err)
	assert.True(t, d2.Equal(d))
	assert.Equal(t, d.String(), d2.String())
	require.Equal(t, d.NSpiders(), d2.NSpiders())
	for i, typ := range d.SpiderTypes() {
		assert.True(t, typ.Equal(d2.SpiderTypes()[i]), "spider %d", i)
	}
}

func TestBadEncoding(t *testing.T) {
	buf, err := libhyper.NewBox("f", x, y).MarshalBinary()
	require.NoError(t, err)

	bad := [][]byte{
		nil,
		buf[:len(buf)-1],
		append([]byte{libhyper.EncodingVersion + 1}, buf[1:]...),
		{libhyper.EncodingVersion, 0xff, 0xff, 0xff, 0x7f},
	}
	for _, src := range bad {
		_, err := libhyper.UnmarshalDiagram(src)
		assert.ErrorIs(t, err, hyper.ErrBadEncoding, "%x", src)
	}

	// buf ends with the wires [0, 0, 1, 1], n_spiders = 2, then the spider types x and y
	d, err := libhyper.UnmarshalDiagram(buf)
	require.NoError(t, err)
	require.Equal(t, 2, d.NSpiders())

	missingSpider := append([]byte(nil), buf...)
	missingSpider[len(buf)-10] = 5
	_, err = libhyper.UnmarshalDiagram(missingSpider)
	assert.ErrorIs(t, err, hyper.ErrBadEncoding)

	wrongType := append([]byte(nil), buf...)
	wrongType[len(buf)-13] = 1
	_, err = libhyper.UnmarshalDiagram(wrongType)
	assert.ErrorIs(t, err, hyper.ErrBadEncoding)
}

func TestCanonicKey(t *testing.T) {
	snake := mustThen(t,
		mustCap(t, x, x.R()).Tensor(libhyper.Id(x)),
		libhyper.Id(x).Tensor(mustCup(t, x.R(), x)),
	)
	assert.True(t, bytes.Equal(snake.CanonicKey(), libhyper.Id(x).CanonicKey()))
	assert.False(t, bytes.Equal(snake.CanonicKey(), libhyper.Id(y).CanonicKey()))
	assert.False(t, bytes.Equal(libhyper.Spider(0, 0, x).CanonicKey(), libhyper.Id(libhyper.Ty()).CanonicKey()))

	f := libhyper.NewBox("f", x, x)
	assert.False(t, bytes.Equal(f.CanonicKey(), f.Dagger().CanonicKey()))
}
