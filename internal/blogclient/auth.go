package blogclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/rs/zerolog"
)

// Signer applies AWS SigV4 signatures for IAM-protected function URLs
type Signer struct {
	logger      zerolog.Logger
	credentials aws.CredentialsProvider
	region      string
	service     string
	now         func() time.Time
}

// NewSigner loads credentials and region from the default AWS chain
func NewSigner(ctx context.Context, logger zerolog.Logger, service string) (*Signer, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeAuth, "failed to load AWS configuration").
			WithContext("suggestion", "ensure AWS credentials are configured")
	}

	if cfg.Region == "" {
		return nil, errors.New(errors.ErrorTypeAuth, "AWS region not configured").
			WithContext("suggestion", "set AWS_REGION or AWS_DEFAULT_REGION environment variable")
	}

	return NewStaticSigner(logger, cfg.Credentials, cfg.Region, service), nil
}

// NewStaticSigner builds a signer from explicit credentials and region
func NewStaticSigner(logger zerolog.Logger, creds aws.CredentialsProvider, region, service string) *Signer {
	return &Signer{
		logger:      logger.With().Str("component", "auth").Logger(),
		credentials: creds,
		region:      region,
		service:     service,
		now:         time.Now,
	}
}

// Sign adds SigV4 headers to req
func (s *Signer) Sign(ctx context.Context, req *http.Request) error {
	creds, err := s.credentials.Retrieve(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeAuth, "failed to retrieve AWS credentials").
			WithContext("suggestion", "check AWS credential configuration")
	}

	var bodyBytes []byte
	if req.Body != nil {
		if bodyBytes, err = io.ReadAll(req.Body); err != nil {
			return errors.Wrap(err, errors.ErrorTypeInternal, "failed to read request body for signing")
		}
		req.Body = io.NopCloser(strings.NewReader(string(bodyBytes)))
	}
	hash := sha256.Sum256(bodyBytes)
	payloadHash := hex.EncodeToString(hash[:])

	if err := v4.NewSigner().SignHTTP(ctx, creds, req, payloadHash, s.service, s.region, s.now()); err != nil {
		return errors.Wrap(err, errors.ErrorTypeAuth, "failed to sign request with SigV4").
			WithContext("service", s.service).
			WithContext("region", s.region)
	}

	s.logger.Debug().
		Str("service", s.service).
		Str("region", s.region).
		Msg("SigV4 signature applied")

	return nil
}
