package variant

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}

	cases := []struct {
		name string
		raw  string
		want Descriptor
	}{
		{
			name: "empty descriptor is base",
			raw:  "",
			want: Descriptor{Width: DefaultBorderWidth},
		},
		{
			name: "grayscale only",
			raw:  "gs",
			want: Descriptor{Grayscale: true, Width: DefaultBorderWidth},
		},
		{
			name: "long grayscale alias",
			raw:  "greyscale",
			want: Descriptor{Grayscale: true, Width: DefaultBorderWidth},
		},
		{
			name: "solid border with width",
			raw:  "c_FF0000_bw_4",
			want: Descriptor{Border: Border{Kind: BorderSolid, Start: red, End: red}, Width: 4},
		},
		{
			name: "gradient border",
			raw:  "cg_ff0000_0000ff",
			want: Descriptor{Border: Border{Kind: BorderGradient, Start: red, End: blue}, Width: DefaultBorderWidth},
		},
		{
			name: "long form tokens",
			raw:  "gradient: ff0000,0000ff gs",
			want: Descriptor{Grayscale: true, Border: Border{Kind: BorderGradient, Start: red, End: blue}, Width: DefaultBorderWidth},
		},
		{
			name: "gradient wins over solid",
			raw:  "c_00ff00_cg_ff0000_0000ff",
			want: Descriptor{Border: Border{Kind: BorderGradient, Start: red, End: blue}, Width: DefaultBorderWidth},
		},
		{
			name: "malformed color is ignored",
			raw:  "gs_c_zz0000",
			want: Descriptor{Grayscale: true, Width: DefaultBorderWidth},
		},
		{
			name: "short color is ignored",
			raw:  "c_fff",
			want: Descriptor{Width: DefaultBorderWidth},
		},
		{
			name: "width above range is clamped",
			raw:  "c_ff0000_bw_9",
			want: Descriptor{Border: Border{Kind: BorderSolid, Start: red, End: red}, Width: MaxBorderWidth},
		},
		{
			name: "width below range is clamped",
			raw:  "c_ff0000_bw_0",
			want: Descriptor{Border: Border{Kind: BorderSolid, Start: red, End: red}, Width: MinBorderWidth},
		},
		{
			name: "overflowing width is clamped",
			raw:  "bw_99999999999999999999999",
			want: Descriptor{Width: MaxBorderWidth},
		},
		{
			name: "unknown tokens are ignored",
			raw:  "shiny_gs_wobble",
			want: Descriptor{Grayscale: true, Width: DefaultBorderWidth},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Parse(tc.raw))
		})
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                          Base,
		"   ":                       Base,
		"bw_2":                      Base,
		"gs":                        "gs",
		"c_FF00AA":                  "c_ff00aa",
		"bw_3_gs":                   "gs_bw_3",
		"gs_bw_3":                   "gs_bw_3",
		"bw_5_cg_FFFFFF_000000_gs":  "gs_cg_ffffff_000000_bw_5",
		"c_00ff00_gs_bw_2":          "gs_c_00ff00",
		"solid: 00FF00, width: 1":   "c_00ff00_bw_1",
		"cg_ff0000_0000ff_c_00ff00": "cg_ff0000_0000ff",
	}

	for raw, want := range cases {
		require.Equal(t, want, Canonicalize(raw), "descriptor %q", raw)
	}
}

func TestCanonicalIsOrderIndependent(t *testing.T) {
	t.Parallel()

	require.Equal(t, Canonicalize("bw_3_gs"), Canonicalize("gs_bw_3"))
	require.Equal(t, Canonicalize("c_ff0000_gs_bw_4"), Canonicalize("bw_4_gs_c_ff0000"))
}

func TestZeroDescriptorIsBase(t *testing.T) {
	t.Parallel()

	require.True(t, Descriptor{}.IsBase())
	require.Equal(t, Base, Descriptor{}.String())
	require.Equal(t, "", Format(Descriptor{}))
}

func TestFormatRoundTrips(t *testing.T) {
	t.Parallel()

	d := Parse("bw_4_c_123abc_gs")
	require.Equal(t, d, Parse(Format(d)))
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	d := Parse("gs_c_ff0000")
	require.Equal(t, "spells_12_gs_c_ff0000", CacheKey("spells", 12, d))
	require.Equal(t, "spells_12_gs_c_ff0000", CacheKey("/icons/spells.png", 12, d))
	require.Equal(t, "spells_1_base", CacheKey("spells.png", 1, Parse("")))

	for i := 0; i < 3; i++ {
		require.Equal(t, CacheKey("spells", 7, Parse("bw_3_gs")), CacheKey("spells", 7, Parse("bw_3_gs")))
	}
}

func TestClampWidth(t *testing.T) {
	t.Parallel()

	require.Equal(t, MinBorderWidth, ClampWidth(-4))
	require.Equal(t, MinBorderWidth, ClampWidth(0))
	require.Equal(t, 3, ClampWidth(3))
	require.Equal(t, MaxBorderWidth, ClampWidth(42))
}
