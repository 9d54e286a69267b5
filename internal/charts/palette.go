package charts

// DefaultPalette is used when a requested palette is unknown.
const DefaultPalette = "default"

// Palette holds the color series a renderer cycles through.
type Palette struct {
	Primary   []string `json:"primary" yaml:"primary"`
	Secondary []string `json:"secondary" yaml:"secondary"`
}

func defaultPalettes() map[string]Palette {
	return map[string]Palette{
		DefaultPalette: {
			Primary:   []string{"#3498db", "#e74c3c", "#f39c12", "#2ecc71", "#9b59b6", "#1abc9c", "#34495e", "#e67e22"},
			Secondary: []string{"#85c1e9", "#f1948a", "#f8c471", "#82e0aa", "#bb8fce", "#76d7c4", "#85929e", "#f0b27a"},
		},
		"blue": {
			Primary:   []string{"#3498db", "#2980b9", "#5dade2", "#85c1e9", "#aed6f1", "#d6eaf8"},
			Secondary: []string{"#85c1e9", "#a9cce3", "#d4e6f1", "#eaf2f8", "#f4f6f7", "#fdfdfe"},
		},
		"green": {
			Primary:   []string{"#2ecc71", "#27ae60", "#58d68d", "#82e0aa", "#abebc6", "#d5f4e6"},
			Secondary: []string{"#82e0aa", "#a3e4c4", "#c3e9d0", "#e8f6f3", "#f4fdf7", "#fdfefe"},
		},
		"red": {
			Primary:   []string{"#e74c3c", "#c0392b", "#ec7063", "#f1948a", "#f5b7b1", "#fadbd8"},
			Secondary: []string{"#f1948a", "#f4a3a8", "#f7b6bb", "#f9cccc", "#fce4ec", "#fef7f7"},
		},
		"purple": {
			Primary:   []string{"#9b59b6", "#8e44ad", "#af7ac5", "#bb8fce", "#c39bd3", "#d7bde2"},
			Secondary: []string{"#bb8fce", "#c8a4d8", "#d5b7e1", "#e2c9ea", "#f0e6f7", "#faf5fd"},
		},
	}
}

// Palette returns a copy of the named palette, falling back to the default.
func (c Catalog) Palette(name string) Palette {
	p, ok := c.palettes[name]
	if !ok {
		p = c.palettes[DefaultPalette]
	}
	return Palette{
		Primary:   append([]string(nil), p.Primary...),
		Secondary: append([]string(nil), p.Secondary...),
	}
}

// Colors returns n primary colors, cycling through the palette.
func (p Palette) Colors(n int) []string {
	if n <= 0 || len(p.Primary) == 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = p.Primary[i%len(p.Primary)]
	}
	return out
}
