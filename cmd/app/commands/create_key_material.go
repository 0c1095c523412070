package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/allisson/secretstore/internal/config"
	cryptoDomain "github.com/allisson/secretstore/internal/crypto/domain"
	cryptoService "github.com/allisson/secretstore/internal/crypto/service"
)

// RunCreateKeyMaterial generates a cryptographically secure 32-byte
// encryption key and prints it sealed, ready for the KEY_MATERIAL environment
// variable. Key material is zeroed from memory after encoding. If keyID is
// empty, a default ID in the format "key-YYYY-MM-DD" is generated.
//
// With --kms-provider and --kms-key-uri the key is sealed by the KMS keeper;
// otherwise it is sealed with MASTER_PASSPHRASE from the environment (a fresh
// passphrase is generated and printed when none is configured).
//
// Additional keys can be appended to KEY_MATERIAL later as long as they are
// sealed with the same passphrase or KMS key.
func RunCreateKeyMaterial(ctx context.Context, keyID, kmsProvider, kmsKeyURI string) error {
	if keyID == "" {
		keyID = fmt.Sprintf("key-%s", time.Now().Format("2006-01-02"))
	}

	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	if kmsKeyURI != "" {
		return sealWithKMS(ctx, keyID, kmsProvider, kmsKeyURI, key)
	}

	return sealWithPassphrase(keyID, key)
}

// sealWithKMS encrypts the key through a gocloud.dev keeper and prints the
// resulting KMS configuration.
func sealWithKMS(ctx context.Context, keyID, kmsProvider, kmsKeyURI string, key []byte) error {
	if kmsProvider == "" {
		return fmt.Errorf("--kms-provider is required when --kms-key-uri is set")
	}

	kmsService := cryptoService.NewKMSService()
	keeperInterface, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closer, ok := keeperInterface.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}()

	keeper, ok := keeperInterface.(interface {
		Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	})
	if !ok {
		return fmt.Errorf("KMS keeper does not support encryption")
	}

	sealed, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to seal key with KMS: %w", err)
	}

	fmt.Println("# Key Material Configuration (KMS Mode)")
	fmt.Println("# Copy these environment variables to your .env file or secrets manager")
	fmt.Println()
	fmt.Printf("KMS_PROVIDER=%q\n", kmsProvider)
	fmt.Printf("KMS_KEY_URI=%q\n", kmsKeyURI)
	fmt.Printf("KEY_MATERIAL=\"%s:%s\"\n", keyID, base64.StdEncoding.EncodeToString(sealed))
	fmt.Printf("DEFAULT_ENCRYPTION_KEY_ID=%q\n", keyID)

	return nil
}

// sealWithPassphrase encrypts the key under the master passphrase from the
// environment, generating and printing a fresh passphrase when none is set.
func sealWithPassphrase(keyID string, key []byte) error {
	cfg := config.Load()

	passphrase := cfg.MasterPassphrase
	generated := false
	if passphrase == "" {
		master := make([]byte, cryptoDomain.KeySize)
		if _, err := rand.Read(master); err != nil {
			return fmt.Errorf("failed to generate master passphrase: %w", err)
		}
		passphrase = base64.StdEncoding.EncodeToString(master)
		cryptoDomain.Zero(master)
		generated = true
	}

	master, err := base64.StdEncoding.DecodeString(passphrase)
	if err != nil {
		return fmt.Errorf("MASTER_PASSPHRASE is not valid base64: %w", err)
	}
	defer cryptoDomain.Zero(master)

	if len(master) != cryptoDomain.KeySize {
		return fmt.Errorf(
			"MASTER_PASSPHRASE must decode to %d bytes, got %d",
			cryptoDomain.KeySize,
			len(master),
		)
	}

	cipher, err := cryptoService.NewChaCha20Poly1305(master)
	if err != nil {
		return fmt.Errorf("failed to create cipher: %w", err)
	}

	sealed, err := cipher.Encrypt(key)
	if err != nil {
		return fmt.Errorf("failed to seal key: %w", err)
	}

	fmt.Println("# Key Material Configuration (Passphrase Mode)")
	fmt.Println("# Copy these environment variables to your .env file or secrets manager")
	fmt.Println()
	if generated {
		fmt.Printf("MASTER_PASSPHRASE=%q\n", passphrase)
	}
	fmt.Printf("KEY_MATERIAL=\"%s:%s\"\n", keyID, base64.StdEncoding.EncodeToString(sealed))
	fmt.Printf("DEFAULT_ENCRYPTION_KEY_ID=%q\n", keyID)

	return nil
}
