package viewtypes

// Shared class strings used across the editor templates.

// SectionLabel is the small caps heading above each panel group.
var SectionLabel = "editor__label"

// Button is the base editor button.
var Button = "editor__button"

