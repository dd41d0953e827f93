package loam

// PresetMetadata is the frontmatter of a preset document.
//
//	---
//	title: Scoreboard
//	tags: [sports]
//	options:
//	  duration: 1.2
//	  sequential_animation_mode: true
//	---
//	Markdown body used as the description.
type PresetMetadata struct {
	ID          string         `json:"id" mapstructure:"id"`
	Title       string         `json:"title" mapstructure:"title"`
	Description string         `json:"description" mapstructure:"description"`
	Tags        []string       `json:"tags" mapstructure:"tags"`
	Options     map[string]any `json:"options" mapstructure:"options"`
}
