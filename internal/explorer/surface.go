package explorer

// Content is the navigable object behind one tab.
type Content interface {
	// Navigate sends the tab to url. The host receives url plus four
	// empty optional parameters.
	Navigate(url string) error
}

// Releaser is implemented by host objects that hold a reference which
// must be dropped explicitly.
type Releaser interface {
	Release()
}

// Item is one entry of the host's browsing-window collection.
type Item interface {
	Content

	// Window returns the hosting top-level window; zero when the item
	// exposes no handle.
	Window() (WindowID, error)
	// LocationURL returns the current location, possibly empty for
	// virtual folders. An error means the item has no location query.
	LocationURL() (string, error)
	// FolderPath walks document -> folder -> self -> path.
	FolderPath() (string, error)
}

// Collection is one capture of the host's browsing windows.
type Collection interface {
	Count() (int, error)
	Item(index int) (Item, error)
	Release()
}

// Surface is the host automation surface.
type Surface interface {
	// Windows returns the current collection. An error means the surface
	// is unavailable.
	Windows() (Collection, error)
}

// Hierarchy is the window content-hierarchy primitive.
type Hierarchy interface {
	// Children returns the direct child windows of id. An error means id
	// is not a valid window.
	Children(id WindowID) ([]WindowID, error)
	// ClassName returns the registered class name of id.
	ClassName(id WindowID) (string, error)
}
