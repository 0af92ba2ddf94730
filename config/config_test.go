package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":     "9090",
		"BAD_INT":  "nine",
		"FLAG":     "true",
		"TTL":      "168h",
		"ORIGINS":  "https://a.com, ,https://b.com",
		"EMPTY":    "",
		"BAD_BOOL": "maybe",
	}

	assert.Equal(t, 9090, GetInt(cfg, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(cfg, "BAD_INT", 8080))
	assert.Equal(t, 8080, GetInt(nil, "PORT", 8080))
	assert.True(t, GetBool(cfg, "FLAG", false))
	assert.True(t, GetBool(cfg, "BAD_BOOL", true))
	assert.Equal(t, 168*time.Hour, GetDuration(cfg, "TTL", time.Hour))
	assert.Equal(t, "fallback", GetString(cfg, "EMPTY", "fallback"))
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, GetList(cfg, "ORIGINS"))
	assert.Nil(t, GetList(cfg, "MISSING"))
}

func TestMergeOverridesExistingKeys(t *testing.T) {
	merged := Merge(map[string]string{"A": "1", "B": "2"}, map[string]string{"B": "3", "C": "4"})
	assert.Equal(t, map[string]string{"A": "1", "B": "3", "C": "4"}, merged)

	assert.Equal(t, map[string]string{"X": "y"}, Merge(nil, map[string]string{"X": "y"}))
}

type pagedParameters struct {
	pages [][]types.Parameter
	calls int
}

func (p *pagedParameters) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := p.pages[p.calls]
	p.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if p.calls < len(p.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestReadParametersFlattensNamesAcrossPages(t *testing.T) {
	source := &pagedParameters{pages: [][]types.Parameter{
		{{Name: aws.String("/portfolio/prod/JWT_SECRET"), Value: aws.String("s3cret")}},
		{{Name: aws.String("/portfolio/prod/RESEND_API_KEY"), Value: aws.String("re_123")}},
	}}

	params, err := ReadParameters(context.Background(), source, "/portfolio/prod")
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
	assert.Equal(t, map[string]string{
		"JWT_SECRET":     "s3cret",
		"RESEND_API_KEY": "re_123",
	}, params)
}
