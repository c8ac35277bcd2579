package manifest

// Manifest is a template bundle's declaration document.
type Manifest struct {
	Name           string            `yaml:"name" json:"name"`
	Version        string            `yaml:"version,omitempty" json:"version,omitempty"`
	Description    string            `yaml:"description,omitempty" json:"description,omitempty"`
	Files          []FileDeclaration `yaml:"files,omitempty" json:"files,omitempty"`
	Discover       []string          `yaml:"discover,omitempty" json:"discover,omitempty"`
	Help           string            `yaml:"help,omitempty" json:"help,omitempty"`
	WelcomeMessage string            `yaml:"welcome_message,omitempty" json:"welcome_message,omitempty"`
}

// FileDeclaration is one manifest entry.
//
// Source is a "/"-separated path relative to the manifest's directory and
// may escape it with ".." to reach shared assets. Destination, when set, is
// a project-relative output path; otherwise it is derived from Kind.
// Subpath is set only on discovered declarations: the file's path below
// its category directory, kept so nested assets keep their layout.
type FileDeclaration struct {
	Source      string `yaml:"source" json:"source"`
	Kind        Kind   `yaml:"kind" json:"kind"`
	Media       string `yaml:"media,omitempty" json:"media,omitempty"`
	Condition   string `yaml:"condition,omitempty" json:"condition,omitempty"`
	Destination string `yaml:"destination,omitempty" json:"destination,omitempty"`
	Subpath     string `yaml:"-" json:"subpath,omitempty"`
}

// Kind categorizes a declared file and selects its default destination directory.
type Kind string

// Kind values.
const (
	KindStylesheet Kind = "stylesheet"
	KindScript     Kind = "script"
	KindImage      Kind = "image"
	KindGeneric    Kind = "generic"
)

// ValidKinds contains all canonical kind values.
var ValidKinds = []Kind{
	KindStylesheet,
	KindScript,
	KindImage,
	KindGeneric,
}

// kindAliases maps accepted spellings to canonical kinds.
var kindAliases = map[string]Kind{
	"stylesheet": KindStylesheet,
	"css":        KindStylesheet,
	"sass":       KindStylesheet,
	"scss":       KindStylesheet,
	"script":     KindScript,
	"javascript": KindScript,
	"js":         KindScript,
	"image":      KindImage,
	"generic":    KindGeneric,
	"file":       KindGeneric,
}

// Discover categories and the kind assigned to files found under them.
const (
	DiscoverStylesheets = "stylesheets"
	DiscoverJavascripts = "javascripts"
	DiscoverImages      = "images"
	DiscoverFiles       = "files"
)

var discoverKinds = map[string]Kind{
	DiscoverStylesheets: KindStylesheet,
	DiscoverJavascripts: KindScript,
	DiscoverImages:      KindImage,
	DiscoverFiles:       KindGeneric,
}

// FileName is the manifest file name expected at the root of a template bundle.
const FileName = "manifest.yaml"
