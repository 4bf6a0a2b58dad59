package component

// Name identifies an entity in scene files and debug output.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

var ActiveCameraTag = TagNamed("active_camera")
