//go:build !windows

package platform

import (
	"context"
	"errors"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
)

// Available implements port.PreferenceSource.
func (*RegistrySource) Available(context.Context) bool {
	return false
}

// Subscribe implements port.PreferenceSource.
func (*RegistrySource) Subscribe(context.Context, entity.Interest) (<-chan port.RawPreferences, error) {
	return nil, errors.ErrUnsupported
}
