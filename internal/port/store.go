package port

import "github.com/jmllr/vidvault/internal/domain"

type AssetStore interface {
	Save(a *domain.MediaAsset) error
	Get(id string) (*domain.MediaAsset, error)
	ListAll() ([]*domain.MediaAsset, error)
}
