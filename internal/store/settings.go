package store

import (
	"database/sql"
	"errors"
	"strconv"
)

// Settings keys.
const (
	keyBrushSize      = "brush_size"
	keyBrushColor     = "brush_color"
	keySmoothingLevel = "smoothing_level"
	keyEraser         = "eraser"
)

// Settings is the persisted form of the drawing settings. BrushColor is a
// "#rrggbb" hex string; numeric validation happens at the configuration
// boundary in the app layer, not here.
type Settings struct {
	BrushSize      int
	BrushColor     string
	SmoothingLevel int
	Eraser         bool
}

// SettingsRepository reads and writes persisted drawing settings.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Load reads the persisted settings. Missing keys fall back to the given
// defaults, so a fresh database yields the defaults unchanged.
func (r *SettingsRepository) Load(defaults Settings) (Settings, error) {
	out := defaults

	if v, err := r.get(keyBrushSize); err == nil {
		if n, err := strconv.Atoi(v); err == nil {
			out.BrushSize = n
		}
	} else if !errors.Is(err, ErrNotFound) {
		return out, err
	}

	if v, err := r.get(keyBrushColor); err == nil {
		out.BrushColor = v
	} else if !errors.Is(err, ErrNotFound) {
		return out, err
	}

	if v, err := r.get(keySmoothingLevel); err == nil {
		if n, err := strconv.Atoi(v); err == nil {
			out.SmoothingLevel = n
		}
	} else if !errors.Is(err, ErrNotFound) {
		return out, err
	}

	if v, err := r.get(keyEraser); err == nil {
		out.Eraser = v == "1"
	} else if !errors.Is(err, ErrNotFound) {
		return out, err
	}

	return out, nil
}

// Save writes all settings fields.
func (r *SettingsRepository) Save(s Settings) error {
	eraser := "0"
	if s.Eraser {
		eraser = "1"
	}

	pairs := map[string]string{
		keyBrushSize:      strconv.Itoa(s.BrushSize),
		keyBrushColor:     s.BrushColor,
		keySmoothingLevel: strconv.Itoa(s.SmoothingLevel),
		keyEraser:         eraser,
	}

	for key, value := range pairs {
		if err := r.set(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *SettingsRepository) get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *SettingsRepository) set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}
