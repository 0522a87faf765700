package paramstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"
)

// SSMAPI abstracts the SSM GetParameter operation for testability.
type SSMAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Store reads parameter values from SSM Parameter Store. Values are not
// cached; every Get reflects the parameter's current version.
type Store struct {
	client SSMAPI
	log    *zap.SugaredLogger
}

// New creates a Store using the provided SSM client and logger.
func New(client SSMAPI, log *zap.SugaredLogger) *Store {
	return &Store{client: client, log: log}
}

// Get fetches the decrypted value of the named parameter.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %s: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("get parameter %s: no value", name)
	}
	s.log.Debugw("parameter loaded", "name", name, "version", out.Parameter.Version)
	return *out.Parameter.Value, nil
}
