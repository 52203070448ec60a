package i18nbundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCodes(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		object string
		field  string
		want   []string
	}{
		{
			name:   "full triple",
			prefix: "required",
			object: "LoginForm",
			field:  "UserName",
			want:   []string{"required.login.form.user.name", "required.user.name", "required"},
		},
		{
			name:   "no object",
			prefix: "required",
			object: "",
			field:  "Email",
			want:   []string{"required.email", "required"},
		},
		{
			name:   "prefix only",
			prefix: "required",
			object: "",
			field:  "",
			want:   []string{"required"},
		},
		{
			name:   "no prefix",
			prefix: "",
			object: "LoginForm",
			field:  "UserName",
			want:   []string{"login.form.user.name", "user.name"},
		},
		{
			name:   "already lower",
			prefix: "invalid",
			object: "order",
			field:  "quantity",
			want:   []string{"invalid.order.quantity", "invalid.quantity", "invalid"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildCodes(tt.prefix, tt.object, tt.field))
		})
	}
}

func TestFieldResolvable(t *testing.T) {
	res := FieldResolvable("required", "LoginForm", "UserName", "arg0")
	assert.Equal(t, []string{"required.login.form.user.name", "required.user.name", "required"}, res.Codes())
	assert.Equal(t, []any{"arg0"}, res.Args())
	_, hasDefault := res.DefaultMessage()
	assert.False(t, hasDefault)
}
