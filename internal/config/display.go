package config

// Editor modes for class and file views.
const (
	EditorModeDecompile = "DECOMPILE"
	EditorModeTable     = "TABLE"
	EditorModeHex       = "HEX"
	EditorModeText      = "TEXT"
)

// Display holds front-end presentation settings.
type Display struct {
	Language          string `json:"language"`
	Style             string `json:"style"`
	FontSize          int    `json:"fontSize"`
	ClassEditorMode   string `json:"classEditorMode"`
	FileEditorMode    string `json:"fileEditorMode"`
	MaxRecursionDepth int    `json:"maxRecursionDepth"`
	MaxTreeDepth      int    `json:"maxTreeDepth"`
	ShowFileFilter    bool   `json:"showFileFilter"`
	ShowSearchFilter  bool   `json:"showSearchFilter"`
}

// NewDisplay returns the display section with default values.
func NewDisplay() *Display {
	return &Display{
		Language:          "English",
		Style:             "default",
		FontSize:          12,
		ClassEditorMode:   EditorModeDecompile,
		FileEditorMode:    EditorModeHex,
		MaxRecursionDepth: 100,
		MaxTreeDepth:      35,
		ShowFileFilter:    true,
		ShowSearchFilter:  true,
	}
}

func (d *Display) Name() string { return KeyDisplay }

func (d *Display) Load(path string) error {
	loaded := NewDisplay()
	if err := readJSON(path, loaded); err != nil {
		return err
	}
	*d = *loaded
	return nil
}

func (d *Display) Save(path string) error {
	return writeJSON(path, d)
}
