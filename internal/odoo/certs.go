package odoo

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-acme/lego/v4/certcrypto"
	"github.com/go-acme/lego/v4/certificate"
	"github.com/go-acme/lego/v4/lego"
	"github.com/go-acme/lego/v4/providers/http/webroot"
	"github.com/go-acme/lego/v4/registration"
	"go.uber.org/zap"
)

// Certificate points at the issued PEM pair on disk.
type Certificate struct {
	CertFile string
	KeyFile  string
}

// CertificateIssuer obtains a TLS certificate for a domain. The production
// implementation talks ACME; tests substitute a fake.
type CertificateIssuer interface {
	Obtain(ctx context.Context, domain, email string) (Certificate, error)
}

type acmeUser struct {
	email        string
	registration *registration.Resource
	key          crypto.PrivateKey
}

func (u *acmeUser) GetEmail() string                        { return u.email }
func (u *acmeUser) GetRegistration() *registration.Resource { return u.registration }
func (u *acmeUser) GetPrivateKey() crypto.PrivateKey        { return u.key }

type acmeIssuer struct {
	host Host
	log  *zap.Logger
}

func NewCertificateIssuer(host Host, log *zap.Logger) CertificateIssuer {
	return &acmeIssuer{host: host, log: log}
}

// Obtain registers a fresh ACME account, answers the HTTP-01 challenge
// through the nginx-served webroot and writes the certificate pair under
// the host cert dir. The account key is not persisted; issuance is a
// one-shot operation at instance creation.
func (i *acmeIssuer) Obtain(ctx context.Context, domain, email string) (Certificate, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return Certificate{}, fmt.Errorf("generate account key: %w", err)
	}
	user := &acmeUser{email: email, key: privateKey}

	config := lego.NewConfig(user)
	if i.host.ACMEDirectoryURL != "" {
		config.CADirURL = i.host.ACMEDirectoryURL
	} else {
		config.CADirURL = lego.LEDirectoryProduction
	}
	config.Certificate.KeyType = certcrypto.EC256

	client, err := lego.NewClient(config)
	if err != nil {
		return Certificate{}, fmt.Errorf("create acme client: %w", err)
	}

	root := challengeRoot(i.host)
	if err := ensureDir(root, 0o755); err != nil {
		return Certificate{}, err
	}
	provider, err := webroot.NewHTTPProvider(root)
	if err != nil {
		return Certificate{}, fmt.Errorf("webroot provider: %w", err)
	}
	if err := client.Challenge.SetHTTP01Provider(provider); err != nil {
		return Certificate{}, fmt.Errorf("set http-01 provider: %w", err)
	}

	reg, err := client.Registration.Register(registration.RegisterOptions{TermsOfServiceAgreed: true})
	if err != nil {
		return Certificate{}, fmt.Errorf("register acme account: %w", err)
	}
	user.registration = reg

	i.log.Info("requesting certificate", zap.String("domain", domain))
	res, err := client.Certificate.Obtain(certificate.ObtainRequest{
		Domains: []string{domain},
		Bundle:  true,
	})
	if err != nil {
		return Certificate{}, fmt.Errorf("obtain certificate for %s: %w", domain, err)
	}

	dir := filepath.Join(i.host.CertDir, domain)
	if err := ensureDir(dir, 0o755); err != nil {
		return Certificate{}, err
	}
	cert := Certificate{
		CertFile: filepath.Join(dir, "fullchain.pem"),
		KeyFile:  filepath.Join(dir, "privkey.pem"),
	}
	if err := os.WriteFile(cert.CertFile, res.Certificate, 0o644); err != nil {
		return Certificate{}, fmt.Errorf("write certificate: %w", err)
	}
	if err := os.WriteFile(cert.KeyFile, res.PrivateKey, 0o600); err != nil {
		return Certificate{}, fmt.Errorf("write private key: %w", err)
	}
	return cert, nil
}
