// Package session implementa el cliente de sesión: almacenamiento cifrado del
// token y la identidad, restauración al arrancar y llamadas autenticadas a la API.
package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

// Entradas del almacenamiento seguro. Se escriben y se borran siempre juntas.
const (
	KeyAccessToken  = "access_token"
	KeyUserIdentity = "user_identity"
)

const (
	defaultIterations = 100000
	keyLen            = 32
	saltLen           = 16
	fileVersion       = 1
)

// ErrCorruptStore el archivo existe pero no se puede descifrar (passphrase distinta o alterado).
var ErrCorruptStore = errors.New("session: almacenamiento seguro ilegible")

// SecureStore almacenamiento clave/valor resistente a manipulación.
// SetAll y DeleteAll son atómicos respecto al conjunto de claves.
type SecureStore interface {
	Get(key string) (string, bool, error)
	SetAll(values map[string]string) error
	DeleteAll(keys ...string) error
}

// FileStore SecureStore sobre un archivo cifrado con AES-GCM; la clave se deriva
// de una passphrase con PBKDF2-SHA256 y una sal aleatoria por archivo.
type FileStore struct {
	mu         sync.Mutex
	path       string
	passphrase []byte
	iterations int
}

// FileStoreOption configura el FileStore.
type FileStoreOption func(*FileStore)

// WithIterations cambia las iteraciones de PBKDF2 (tests).
func WithIterations(n int) FileStoreOption {
	return func(s *FileStore) { s.iterations = n }
}

// NewFileStore construye el store; el archivo se crea en la primera escritura.
func NewFileStore(path, passphrase string, opts ...FileStoreOption) (*FileStore, error) {
	if passphrase == "" {
		return nil, errors.New("session: passphrase vacía")
	}
	s := &FileStore{path: path, passphrase: []byte(passphrase), iterations: defaultIterations}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type envelope struct {
	Version int    `json:"version"`
	Salt    []byte `json:"salt"`
	Nonce   []byte `json:"nonce"`
	Data    []byte `json:"data"`
}

// Get devuelve el valor de la clave; ok=false si no existe.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// SetAll escribe todas las claves en una sola sustitución del archivo.
func (s *FileStore) SetAll(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.load()
	if err != nil {
		return err
	}
	for k, v := range values {
		current[k] = v
	}
	return s.save(current)
}

// DeleteAll borra las claves; si no queda ninguna elimina el archivo. Idempotente.
func (s *FileStore) DeleteAll(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.load()
	switch {
	case errors.Is(err, ErrCorruptStore):
		current = map[string]string{}
	case err != nil:
		return err
	}
	for _, k := range keys {
		delete(current, k)
	}
	if len(current) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("session: borrar almacenamiento: %w", err)
		}
		return nil
	}
	return s.save(current)
}

func (s *FileStore) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: leer almacenamiento: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Version != fileVersion {
		return nil, ErrCorruptStore
	}
	gcm, err := s.cipher(env.Salt)
	if err != nil {
		return nil, err
	}
	if len(env.Nonce) != gcm.NonceSize() {
		return nil, ErrCorruptStore
	}
	plain, err := gcm.Open(nil, env.Nonce, env.Data, nil)
	if err != nil {
		return nil, ErrCorruptStore
	}
	values := map[string]string{}
	if err := json.Unmarshal(plain, &values); err != nil {
		return nil, ErrCorruptStore
	}
	return values, nil
}

// save cifra con sal y nonce nuevos y reemplaza el archivo vía rename.
func (s *FileStore) save(values map[string]string) error {
	plain, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("session: serializar: %w", err)
	}
	env := envelope{Version: fileVersion, Salt: make([]byte, saltLen)}
	if _, err := io.ReadFull(rand.Reader, env.Salt); err != nil {
		return fmt.Errorf("session: generar sal: %w", err)
	}
	gcm, err := s.cipher(env.Salt)
	if err != nil {
		return err
	}
	env.Nonce = make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, env.Nonce); err != nil {
		return fmt.Errorf("session: generar nonce: %w", err)
	}
	env.Data = gcm.Seal(nil, env.Nonce, plain, nil)

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("session: serializar: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session: crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("session: archivo temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("session: escribir: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("session: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: cerrar: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("session: permisos: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("session: reemplazar almacenamiento: %w", err)
	}
	return nil
}

func (s *FileStore) cipher(salt []byte) (cipher.AEAD, error) {
	if len(salt) != saltLen {
		return nil, ErrCorruptStore
	}
	key := pbkdf2.Key(s.passphrase, salt, s.iterations, keyLen, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("session: cifrador: %w", err)
	}
	return cipher.NewGCM(block)
}
