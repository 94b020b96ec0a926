package menu

// DefaultLayers is the configuration used until the user saves their own.
func DefaultLayers() []Layer {
	return []Layer{
		{
			ID:          1,
			Name:        "Home",
			IsBaseLayer: true,
			Color:       "#AEAEAE",
			Items: []Entry{
				AppRef("org.gnome.Nautilus"),
				AppRef("org.gnome.Console"),
				AppRef("md.obsidian.Obsidian"),
				AppRef("org.telegram.desktop"),
				AppRef("org.gnome.Snapshot"),
				AppRef("org.mozilla.firefox"),
				AppRef("org.gnome.Loupe"),
				AppRef("org.gnome.Maps"),
				AppRef("com.spotify.Client"),
				AppRef("org.gnome.clocks"),
				LayerLink(2),
			},
		},
		{
			ID:    2,
			Name:  "Second level",
			Color: "#EAEAEA",
			Items: []Entry{
				LayerLink(1),
				AppRef("io.freetubeapp.FreeTube"),
				AppRef("org.gnome.Nautilus"),
			},
		},
	}
}

// DefaultBrowserActions are the bookmarks offered in the browser layer.
func DefaultBrowserActions() []BrowserAction {
	return []BrowserAction{
		{URL: "https://google.com", Label: "Google"},
		{URL: "https://www.duden.de/suchen/dudenonline", Label: "Duden"},
		{URL: "https://www.deepl.com/de/write#de", Label: "DeepL Write"},
		{URL: "https://www.deepl.com/de/translate#de", Label: "DeepL Translate"},
	}
}
