package main

import (
	"testing"

	"qrvalidator/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestConfigArgs(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"serve"}, nil},
		{[]string{"-c", "prod.yml", "serve"}, []string{"-c", "prod.yml"}},
		{[]string{"decode", "cnh.pdf", "--config", "x.yml", "--dpi", "150"}, []string{"-c", "x.yml"}},
		{[]string{"jwt", "-c=a.yml", "--subject", "kiosk"}, []string{"-c=a.yml"}},
		{[]string{"serve", "--config=b.yml"}, []string{"-c=b.yml"}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, configArgs(tt.args), "%v", tt.args)
	}
}

func TestMediaTypeByExtension(t *testing.T) {
	for name, want := range map[string]domain.MediaType{
		"cnh.PNG":  domain.MediaTypePNG,
		"cnh.jpg":  domain.MediaTypeJPEG,
		"cnh.jpeg": domain.MediaTypeJPEG,
		"cnh.pdf":  domain.MediaTypePDF,
	} {
		got, ok := mediaTypeByExtension(name)
		require.True(t, ok, name)
		require.Equal(t, want, got, name)
	}

	_, ok := mediaTypeByExtension("cnh.gif")
	require.False(t, ok)
}
