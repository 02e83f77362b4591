package config

import "time"

// Decompiler identifiers understood by the decompilation engine.
const (
	DecompilerCFR        = "CFR"
	DecompilerFernFlower = "FERNFLOWER"
	DecompilerProcyon    = "PROCYON"
)

// Decompile holds settings passed through to the decompilation engine.
type Decompile struct {
	Decompiler    string            `json:"decompiler"`
	ShowSynthetic bool              `json:"showSynthetic"`
	StripDebug    bool              `json:"stripDebug"`
	ShowName      bool              `json:"showName"`
	TimeoutMillis int64             `json:"timeoutMillis"`
	Options       map[string]string `json:"options"`
}

// NewDecompile returns the decompile section with default values.
func NewDecompile() *Decompile {
	return &Decompile{
		Decompiler:    DecompilerCFR,
		ShowName:      true,
		TimeoutMillis: 10_000,
		Options:       map[string]string{},
	}
}

func (d *Decompile) Name() string { return KeyDecompile }

func (d *Decompile) Load(path string) error {
	loaded := NewDecompile()
	if err := readJSON(path, loaded); err != nil {
		return err
	}
	if loaded.Options == nil {
		loaded.Options = map[string]string{}
	}
	*d = *loaded
	return nil
}

func (d *Decompile) Save(path string) error {
	return writeJSON(path, d)
}

// Timeout returns the decompilation timeout.
func (d *Decompile) Timeout() time.Duration {
	return time.Duration(d.TimeoutMillis) * time.Millisecond
}
