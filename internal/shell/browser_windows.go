//go:build windows

package shell

import (
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/Iron-Ham/tabmerge/internal/errors"
	"github.com/Iron-Ham/tabmerge/internal/explorer"
)

// browser is one ShellWindows entry, an IWebBrowser2 behind IDispatch.
type browser struct {
	disp *ole.IDispatch
}

func (b *browser) Window() (explorer.WindowID, error) {
	v, err := oleutil.GetProperty(b.disp, "HWND")
	if err != nil {
		return 0, errors.NewHostError("IWebBrowser2.HWND", err).WithOperation("hwnd")
	}
	defer v.Clear()

	if v.VT == ole.VT_I4 {
		return explorer.WindowID(uint32(v.Val)), nil
	}
	return explorer.WindowID(uintptr(v.Val)), nil
}

func (b *browser) LocationURL() (string, error) {
	v, err := oleutil.GetProperty(b.disp, "LocationURL")
	if err != nil {
		return "", errors.NewHostError("IWebBrowser2.LocationURL", err).WithOperation("location")
	}
	defer v.Clear()
	return v.ToString(), nil
}

// FolderPath walks Document -> Folder -> Self -> Path.
func (b *browser) FolderPath() (string, error) {
	doc, err := dispatchProperty(b.disp, "Document")
	if err != nil {
		return "", err
	}
	defer doc.Release()

	folder, err := dispatchProperty(doc, "Folder")
	if err != nil {
		return "", err
	}
	defer folder.Release()

	self, err := dispatchProperty(folder, "Self")
	if err != nil {
		return "", err
	}
	defer self.Release()

	v, err := oleutil.GetProperty(self, "Path")
	if err != nil {
		return "", errors.NewHostError("FolderItem.Path", err).WithOperation("path")
	}
	defer v.Clear()
	return v.ToString(), nil
}

// Navigate calls Navigate2 with four empty optional arguments.
func (b *browser) Navigate(url string) error {
	v, err := oleutil.CallMethod(b.disp, "Navigate2", url, nil, nil, nil, nil)
	if err != nil {
		return errors.NewHostError("IWebBrowser2.Navigate2", err).WithOperation("navigate")
	}
	v.Clear()
	return nil
}

// BaseInterface reports the address of the object's IUnknown, which COM
// guarantees to be stable for as long as any reference is held.
func (b *browser) BaseInterface() (uintptr, error) {
	unknown, err := b.disp.QueryInterface(ole.IID_IUnknown)
	if err != nil {
		return 0, err
	}
	addr := uintptr(unsafe.Pointer(unknown))
	unknown.Release()
	return addr, nil
}

func (b *browser) Release() {
	if b.disp != nil {
		b.disp.Release()
		b.disp = nil
	}
}

func dispatchProperty(disp *ole.IDispatch, name string) (*ole.IDispatch, error) {
	v, err := oleutil.GetProperty(disp, name)
	if err != nil {
		return nil, errors.NewHostError(name, err).WithOperation("get_property")
	}
	child := v.ToIDispatch()
	if child == nil {
		v.Clear()
		return nil, errors.NewHostError(name+" is empty", nil).WithOperation("get_property")
	}
	return child, nil
}
