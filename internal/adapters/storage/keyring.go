package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/zalando/go-keyring"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

var _ session.Storage = (*KeyringStorage)(nil)

// indexKey lists every key written, so Clear can remove them all; the OS
// keyring has no way to enumerate entries of a service.
const indexKey = "__keys"

var ErrKeyringUnavailable = errors.New("OS keyring is not available")

type KeyringStorage struct {
	service string
}

func NewKeyringStorage(service string) *KeyringStorage {
	return &KeyringStorage{service: service}
}

// Available does a read probe; ErrNotFound still means the keyring works.
func (k *KeyringStorage) Available() bool {
	_, err := keyring.Get(k.service, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

func (k *KeyringStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := keyring.Get(k.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", session.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func (k *KeyringStorage) Set(ctx context.Context, key, value string) error {
	if err := keyring.Set(k.service, key, value); err != nil {
		return fmt.Errorf("storage: keyring set %q: %w", key, err)
	}

	keys, err := k.keys()
	if err != nil {
		return err
	}
	for _, existing := range keys {
		if existing == key {
			return nil
		}
	}
	return k.writeKeys(append(keys, key))
}

func (k *KeyringStorage) Delete(ctx context.Context, key string) error {
	err := keyring.Delete(k.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("storage: keyring delete %q: %w", key, err)
	}

	keys, err := k.keys()
	if err != nil {
		return err
	}
	kept := keys[:0]
	for _, existing := range keys {
		if existing != key {
			kept = append(kept, existing)
		}
	}
	return k.writeKeys(kept)
}

func (k *KeyringStorage) Clear(ctx context.Context) error {
	keys, err := k.keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := keyring.Delete(k.service, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("storage: keyring delete %q: %w", key, err)
		}
	}
	if err := keyring.Delete(k.service, indexKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("storage: keyring clear index: %w", err)
	}
	return nil
}

func (k *KeyringStorage) keys() ([]string, error) {
	raw, err := keyring.Get(k.service, indexKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}

	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, nil
	}
	return keys, nil
}

func (k *KeyringStorage) writeKeys(keys []string) error {
	sort.Strings(keys)
	data, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	if err := keyring.Set(k.service, indexKey, string(data)); err != nil {
		return fmt.Errorf("storage: keyring write index: %w", err)
	}
	return nil
}
