package model

import "testing"

func TestUserRegistered(t *testing.T) {
	tests := []struct {
		name string
		user User
		want bool
	}{
		{"both phone and email", User{PhoneNumber: "+91 98765 43210", Email: "dev@example.com"}, true},
		{"phone only", User{PhoneNumber: "+91 98765 43210"}, false},
		{"email only", User{Email: "dev@example.com"}, false},
		{"neither", User{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.Registered(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
