package project

// RenderInput is the shared input of the render stage. Handlers add entries
// to Files; Metadata and TemplateDir are read-only by convention. Modes holds
// the permissions of template files, keyed like Files.
type RenderInput struct {
	Metadata    Metadata
	TemplateDir string
	Files       FileSet
	Modes       Modes
}

// EmitInput is the shared input of the emit stage.
type EmitInput struct {
	TargetDir string
	Files     FileSet
	Modes     Modes
}
