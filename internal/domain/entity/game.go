package entity

import "time"

// Platforms lists the operating systems a game or upload ships for.
type Platforms struct {
	Windows bool `json:"windows,omitempty"`
	Linux   bool `json:"linux,omitempty"`
	OSX     bool `json:"osx,omitempty"`
}

// Supports reports whether the platform set includes goos.
func (p Platforms) Supports(goos string) bool {
	switch goos {
	case "windows":
		return p.Windows
	case "linux":
		return p.Linux
	case "darwin":
		return p.OSX
	default:
		return false
	}
}

// Game is a store page entry.
type Game struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	ShortText     string     `json:"shortText,omitempty"`
	URL           string     `json:"url"`
	CoverURL      string     `json:"coverUrl,omitempty"`
	StillCoverURL string     `json:"stillCoverUrl,omitempty"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	Platforms     Platforms  `json:"platforms"`
}

// Cave is a local installation of a game.
type Cave struct {
	ID            string     `json:"id"`
	GameID        int64      `json:"gameId"`
	UploadID      int64      `json:"uploadId,omitempty"`
	InstallFolder string     `json:"installFolder"`
	SecondsRun    int64      `json:"secondsRun"`
	LastTouchedAt *time.Time `json:"lastTouchedAt,omitempty"`
	InstalledAt   time.Time  `json:"installedAt"`
}

// Upload is a downloadable file attached to a game.
type Upload struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	DisplayName string    `json:"displayName,omitempty"`
	Size        int64     `json:"size"`
	Type        string    `json:"type,omitempty"`
	Platforms   Platforms `json:"platforms"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DownloadKey grants access to a paid game.
type DownloadKey struct {
	ID        int64     `json:"id"`
	GameID    int64     `json:"gameId"`
	OwnerID   int64     `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// GameCredentials are sent to the download service on behalf of the user.
type GameCredentials struct {
	APIKey      string `json:"apiKey"`
	DownloadKey int64  `json:"downloadKey,omitempty"`
}

// GameRecord pairs a game with its installation, if any.
type GameRecord struct {
	Game *Game
	Cave *Cave
}

// ManageGameParams are the widget params of the manage-game modal.
type ManageGameParams struct {
	Game           *Game    `json:"game"`
	Caves          []*Cave  `json:"caves"`
	AllUploads     []Upload `json:"allUploads"`
	LoadingUploads bool     `json:"loadingUploads"`
}
