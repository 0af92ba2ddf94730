package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterSource is the subset of the SSM client used to read parameters.
type ParameterSource interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// LoadSSMParameters reads every parameter below parameterPath from AWS SSM
// Parameter Store. Keys are the last path segment, so /portfolio/prod/JWT_SECRET
// becomes JWT_SECRET.
func LoadSSMParameters(ctx context.Context, region, parameterPath string) (map[string]string, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ReadParameters(ctx, ssm.NewFromConfig(awsCfg), parameterPath)
}

// ReadParameters pages through parameterPath and returns decrypted values.
func ReadParameters(ctx context.Context, client ParameterSource, parameterPath string) (map[string]string, error) {
	params := make(map[string]string)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("read ssm parameters under %s: %w", parameterPath, err)
		}
		for _, p := range page.Parameters {
			name := strings.TrimSpace(path.Base(aws.ToString(p.Name)))
			if name == "" || name == "/" || name == "." {
				continue
			}
			params[name] = aws.ToString(p.Value)
		}
	}
	return params, nil
}
