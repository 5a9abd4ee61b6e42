package explorer

// IdentityProvider is implemented by references that can report a
// whole-object identity directly.
type IdentityProvider interface {
	Identity() (uintptr, error)
}

// BaseInterfacer is implemented by references that can reacquire their
// stable base interface (IUnknown for COM objects) and report its address.
type BaseInterfacer interface {
	BaseInterface() (uintptr, error)
}

// Unwrapper is implemented by wrappers that hold the real reference one
// level down. The Windows shell adapter hands out its IDispatch directly
// and never needs it; it serves decorators around a Surface's items.
type Unwrapper interface {
	Unwrap() any
}

// IdentityOf returns a comparable token for ref, or 0 when no strategy
// resolves. Strategies are tried in order, each only if the previous one
// failed: the native identity query, the base-interface address, and the
// native query on the unwrapped reference.
func IdentityOf(ref any) Token {
	if ref == nil {
		return 0
	}

	if t := nativeIdentity(ref); t.Known() {
		return t
	}

	if b, ok := ref.(BaseInterfacer); ok {
		if addr, err := b.BaseInterface(); err == nil && addr != 0 {
			return Token(addr)
		}
	}

	if u, ok := ref.(Unwrapper); ok {
		if inner := u.Unwrap(); inner != nil {
			return nativeIdentity(inner)
		}
	}

	return 0
}

func nativeIdentity(ref any) Token {
	p, ok := ref.(IdentityProvider)
	if !ok {
		return 0
	}
	id, err := p.Identity()
	if err != nil {
		return 0
	}
	return Token(id)
}

// SameObject reports whether two tokens identify the same object. Unknown
// tokens never match, including each other. The new-tab watcher compares
// baseline tokens through it.
func SameObject(a, b Token) bool {
	return a.Known() && a == b
}
