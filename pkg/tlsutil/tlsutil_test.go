package tlsutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quinlan2018/SDMX/config"
	"github.com/Quinlan2018/SDMX/errors"
)

// generateTestCert creates a self-signed certificate for 127.0.0.1
func generateTestCert(t *testing.T) (certPEM, keyPEM []byte) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Organization: []string{"Test Statistics Office"},
			CommonName:   "localhost",
		},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1")},
		DNSNames:              []string{"localhost"},
		NotBefore:             time.Now().Add(-time.Minute),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	require.NoError(t, err)

	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privateKey)})
	return certPEM, keyPEM
}

func writeFiles(t *testing.T) (certFile, keyFile string) {
	t.Helper()
	dir := t.TempDir()
	certPEM, keyPEM := generateTestCert(t)

	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(certFile, certPEM, 0644))
	require.NoError(t, os.WriteFile(keyFile, keyPEM, 0600))
	return certFile, keyFile
}

func TestLoadClientTLSConfig(t *testing.T) {
	certFile, _ := writeFiles(t)
	badPEM := filepath.Join(t.TempDir(), "bad.pem")
	require.NoError(t, os.WriteFile(badPEM, []byte("not pem"), 0644))

	tests := []struct {
		name    string
		cfg     config.TLSConfig
		wantErr bool
		checkFn func(*testing.T, *tls.Config)
	}{
		{
			name: "defaults",
			cfg:  config.TLSConfig{},
			checkFn: func(t *testing.T, tlsCfg *tls.Config) {
				assert.NotNil(t, tlsCfg.RootCAs)
				assert.Equal(t, uint16(tls.VersionTLS12), tlsCfg.MinVersion)
				assert.False(t, tlsCfg.InsecureSkipVerify)
			},
		},
		{
			name: "TLS 1.3 with extra CA",
			cfg:  config.TLSConfig{MinVersion: "1.3", CAFiles: []string{certFile}},
			checkFn: func(t *testing.T, tlsCfg *tls.Config) {
				assert.Equal(t, uint16(tls.VersionTLS13), tlsCfg.MinVersion)
			},
		},
		{
			name: "insecure",
			cfg:  config.TLSConfig{InsecureSkipVerify: true},
			checkFn: func(t *testing.T, tlsCfg *tls.Config) {
				assert.True(t, tlsCfg.InsecureSkipVerify)
			},
		},
		{
			name:    "missing CA file",
			cfg:     config.TLSConfig{CAFiles: []string{"/nonexistent/ca.pem"}},
			wantErr: true,
		},
		{
			name:    "invalid PEM",
			cfg:     config.TLSConfig{CAFiles: []string{badPEM}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadClientTLSConfig(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsFatal(err))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			tt.checkFn(t, got)
		})
	}
}

func TestClientTrustsAdditionalCA(t *testing.T) {
	certFile, keyFile := writeFiles(t)

	serverTLS, err := LoadServerTLSConfig(certFile, keyFile, "1.2")
	require.NoError(t, err)
	require.Len(t, serverTLS.Certificates, 1)

	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<mes:Structure/>"))
	}))
	srv.TLS = serverTLS
	srv.StartTLS()
	defer srv.Close()

	clientTLS, err := LoadClientTLSConfig(config.TLSConfig{CAFiles: []string{certFile}})
	require.NoError(t, err)

	client := &http.Client{Transport: &http.Transport{TLSClientConfig: clientTLS}}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<mes:Structure/>", string(body))

	untrusted, err := LoadClientTLSConfig(config.TLSConfig{})
	require.NoError(t, err)
	client = &http.Client{Transport: &http.Transport{TLSClientConfig: untrusted}}
	_, err = client.Get(srv.URL)
	assert.Error(t, err, "self-signed certificate is rejected without the extra CA")
}

func TestLoadServerTLSConfig_MissingFiles(t *testing.T) {
	_, err := LoadServerTLSConfig("/nonexistent/cert.pem", "/nonexistent/key.pem", "")
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestParseTLSVersion(t *testing.T) {
	tests := []struct {
		version string
		want    uint16
	}{
		{"1.3", tls.VersionTLS13},
		{"1.2", tls.VersionTLS12},
		{"", tls.VersionTLS12},
		{"1.1", tls.VersionTLS12},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTLSVersion(tt.version))
		})
	}
}
