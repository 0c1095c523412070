package app

import (
	"context"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/secretstore/internal/crypto/domain"
	cryptoService "github.com/allisson/secretstore/internal/crypto/service"
)

// EncryptionEngine returns the unsealed encryption engine.
func (c *Container) EncryptionEngine() (cryptoService.EncryptionEngine, error) {
	c.engineInit.Do(func() {
		engine, err := c.initEncryptionEngine()
		if err != nil {
			c.initErrors["encryptionEngine"] = err
			return
		}
		c.engine = engine
	})
	if storedErr, exists := c.initErrors["encryptionEngine"]; exists {
		return nil, storedErr
	}
	return c.engine, nil
}

// initEncryptionEngine parses the configured sealed key material and unseals
// it exactly once, either with the master passphrase or through a KMS keeper
// when KMS_KEY_URI is configured. Any failure here is fatal to startup.
func (c *Container) initEncryptionEngine() (cryptoService.EncryptionEngine, error) {
	sealed, err := cryptoDomain.ParseSealedKeyMaterial(c.config.KeyMaterial)
	if err != nil {
		return nil, fmt.Errorf("failed to parse key material: %w", err)
	}

	engine := cryptoService.NewEncryptionEngine(sealed)

	if c.config.KMSKeyURI != "" {
		if err := c.unsealWithKMS(engine); err != nil {
			return nil, err
		}
	} else {
		if err := engine.Unseal(c.config.MasterPassphrase); err != nil {
			return nil, fmt.Errorf("failed to unseal key material: %w", err)
		}
	}

	if c.config.DefaultEncryptionKeyID == "" {
		return nil, fmt.Errorf("DEFAULT_ENCRYPTION_KEY_ID is not configured")
	}
	if !engine.HasKey(c.config.DefaultEncryptionKeyID) {
		return nil, fmt.Errorf(
			"default encryption key %q is not present in the key material",
			c.config.DefaultEncryptionKeyID,
		)
	}

	return engine, nil
}

// unsealWithKMS opens a keeper for the configured KMS key URI and unseals the
// engine through it. The keeper is only needed for the unseal step and is
// closed afterwards.
func (c *Container) unsealWithKMS(engine cryptoService.EncryptionEngine) error {
	ctx := context.Background()

	kmsService := cryptoService.NewKMSService()
	keeper, err := kmsService.OpenKeeper(ctx, c.config.KMSKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closer, ok := keeper.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	if err := engine.UnsealWithKeeper(ctx, keeper); err != nil {
		return fmt.Errorf("failed to unseal key material with KMS keeper: %w", err)
	}

	return nil
}
