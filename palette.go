package grove

// Named colors used by the builders.
var (
	ColorWhiteLight = ColorHex(0xF0F0F0)
	ColorWhiteDark  = ColorHex(0xE0E0E0)
	ColorGreyLight  = ColorHex(0x888888)
	ColorGreyDark   = ColorHex(0x444444)
	ColorGreenDark  = ColorHex(0x228822)
	ColorPinkLight  = ColorHex(0xFFC0CB)
	ColorRedLight   = ColorHex(0xFF6B6B)
	ColorRedDark    = ColorHex(0xE53E3E)
)

// Palettes. Builders pick from these with the caller's Rand.
var (
	PaletteTrunk   = []Color{ColorHex(0xF0F0F0), ColorHex(0xE0E0E0), ColorHex(0x888888), ColorHex(0x444444)}
	PalettePinks   = []Color{ColorHex(0xFFC0CB), ColorHex(0xFFB6C1), ColorHex(0xFF69B4)}
	PaletteYellows = []Color{ColorHex(0xFFD700), ColorHex(0xFFDF00), ColorHex(0xFFEF00)}
	PalettePurples = []Color{ColorHex(0x9B59B6), ColorHex(0x8E44AD), ColorHex(0x7D3C98)}
	PaletteGreens  = []Color{ColorHex(0x2ECC71), ColorHex(0x27AE60), ColorHex(0x229954)}
	PaletteLeaves  = []Color{ColorHex(0x2ECC71), ColorHex(0x27AE60), ColorHex(0x1E8449), ColorHex(0x196F3D)}

	// Block-tree palettes.
	PaletteBlockLeaves = []Color{
		ColorHex(0x91E56E), ColorHex(0xA2FF7A), ColorHex(0x71B356), ColorHex(0xB2FFB2),
		ColorHex(0x6EDB91), ColorHex(0xC2FFB2), ColorHex(0xA2E5A2),
	}
	PaletteBlockStems = []Color{ColorHex(0x7D5A4F), ColorHex(0xA67C52), ColorHex(0x8B5A2B), ColorHex(0xB97A56)}
)

// foliagePalettes are the candidates a simple trunc chooses its blossom
// palette from.
var foliagePalettes = [][]Color{PalettePinks, PaletteYellows, PaletteGreens, PalettePurples}
