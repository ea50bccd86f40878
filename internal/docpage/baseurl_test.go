package docpage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBaseURLResolver(t *testing.T) {
	tests := []struct {
		name     string
		resolver BaseURLResolver
		path     string
		absolute bool
		want     string
	}{
		{"empty", BaseURLResolver{SiteURL: "https://a.cn"}, "", true, ""},
		{"fragment", BaseURLResolver{SiteURL: "https://a.cn"}, "#top", true, "#top"},
		{"full url", BaseURLResolver{SiteURL: "https://a.cn"}, "https://cdn.cn/x.png", true, "https://cdn.cn/x.png"},
		{"protocol relative", BaseURLResolver{SiteURL: "https://a.cn"}, "//cdn.cn/x.png", true, "//cdn.cn/x.png"},
		{"root base relative", BaseURLResolver{SiteURL: "https://a.cn", BaseURL: "/"}, "img/x.png", false, "/img/x.png"},
		{"root base absolute", BaseURLResolver{SiteURL: "https://a.cn/", BaseURL: "/"}, "/img/x.png", true, "https://a.cn/img/x.png"},
		{"sub base", BaseURLResolver{SiteURL: "https://a.cn", BaseURL: "/rn/"}, "/img/x.png", true, "https://a.cn/rn/img/x.png"},
		{"sub base without slash", BaseURLResolver{SiteURL: "https://a.cn", BaseURL: "/rn"}, "img/x.png", false, "/rn/img/x.png"},
		{"already prefixed", BaseURLResolver{SiteURL: "https://a.cn", BaseURL: "/rn/"}, "/rn/img/x.png", true, "https://a.cn/rn/img/x.png"},
		{"default base", BaseURLResolver{SiteURL: "https://a.cn"}, "x.png", true, "https://a.cn/x.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.resolver.Resolve(tt.path, tt.absolute))
		})
	}
}
