package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "owner/shot.png", want: "owner/shot.png"},
		{name: "simple prefix", prefix: "portfolios", key: "owner/shot.png", want: "portfolios/owner/shot.png"},
		{name: "prefix trailing slash", prefix: "portfolios/", key: "owner/shot.png", want: "portfolios/owner/shot.png"},
		{name: "prefix and key slashes", prefix: "/portfolios/", key: "/owner/shot.png", want: "portfolios/owner/shot.png"},
		{name: "nested prefix", prefix: "portfolios/sub", key: "owner/shot.png", want: "portfolios/sub/owner/shot.png"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}
