package valueobjects

// Voiceover is an audio recording of one piece of content in one language
type Voiceover struct {
	Filename      string  `json:"filename"`
	FileSizeBytes int     `json:"file_size_bytes"`
	NeedsUpdate   bool    `json:"needs_update"`
	DurationSecs  float64 `json:"duration_secs"`
}

// VoiceoversMapping maps content id -> language code -> voiceover
type VoiceoversMapping map[string]map[string]Voiceover

// Clone returns a deep copy
func (m VoiceoversMapping) Clone() VoiceoversMapping {
	if m == nil {
		return nil
	}
	out := make(VoiceoversMapping, len(m))
	for contentID, byLanguage := range m {
		langs := make(map[string]Voiceover, len(byLanguage))
		for lang, v := range byLanguage {
			langs[lang] = v
		}
		out[contentID] = langs
	}
	return out
}
