package document

type designDefault struct {
	key   string
	value any
}

// Numbers are float64 so values survive a JSON round trip unchanged.
var designDefaults = [...]designDefault{
	{key: "font", value: "Rubik"},
	{key: "fontSize", value: float64(3)},
	{key: "lineHeight", value: 1.6},
	{key: "margin", value: float64(1)},
	{key: "spacing", value: 1.5},
	{key: "titleColor", value: "#000000"},
	{key: "subtitleColor", value: "#444444"},
}

// DefaultDesign returns the styling used when the client supplies none.
func DefaultDesign() map[string]any {
	return NormalizeDesign(nil)
}

// NormalizeDesign keeps client values for the fixed design keys and fills the
// rest with defaults. Keys outside the fixed set are dropped.
func NormalizeDesign(candidate any) map[string]any {
	return normalizeDesign(candidate, nil)
}

func normalizeDesign(candidate any, report reportFunc) map[string]any {
	design, ok := asMap(candidate)
	if !ok && candidate != nil {
		report.emit(MalformedDesign)
	}
	out := make(map[string]any, len(designDefaults))
	for _, d := range designDefaults {
		if v, present := design[d.key]; present {
			out[d.key] = cloneValue(v)
			continue
		}
		out[d.key] = d.value
	}
	return out
}
