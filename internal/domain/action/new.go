package action

import (
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/google/uuid"
)

// NewTabID generates a fresh tab id.
func NewTabID() entity.TabID {
	return entity.TabID("tab-" + uuid.NewString())
}

// NewModalID generates a fresh modal id.
func NewModalID() string {
	return "modal-" + uuid.NewString()
}

// NewNavigate builds a Navigate action with a generated tab id.
func NewNavigate(window entity.WindowID, url string, background bool) Navigate {
	return Navigate{Window: window, Tab: NewTabID(), URL: url, Background: background}
}

// NewOpenModal builds an OpenModal action, generating the modal id when the
// modal has none.
func NewOpenModal(window entity.WindowID, modal entity.Modal) OpenModal {
	if modal.ID == "" {
		modal.ID = NewModalID()
	}
	return OpenModal{Window: window, Modal: modal}
}

// WebLoading is a data patch updating only the loading flag.
func WebLoading(loading bool) entity.TabDataPatch {
	return entity.TabDataPatch{Web: &entity.WebPatch{Loading: &loading}}
}

// WebEditingAddress is a data patch updating only the address editing flag.
func WebEditingAddress(editing bool) entity.TabDataPatch {
	return entity.TabDataPatch{Web: &entity.WebPatch{EditingAddress: &editing}}
}

// WebFavicon is a data patch updating only the favicon.
func WebFavicon(favicon string) entity.TabDataPatch {
	return entity.TabDataPatch{Web: &entity.WebPatch{Favicon: &favicon}}
}

// WebSurface is a data patch publishing a surface id and its loading state.
func WebSurface(id entity.SurfaceID, loading bool) entity.TabDataPatch {
	return entity.TabDataPatch{Web: &entity.WebPatch{WebContentsID: &id, Loading: &loading}}
}

// Label is a data patch updating only the tab label.
func Label(label string) entity.TabDataPatch {
	return entity.TabDataPatch{Label: &label}
}
