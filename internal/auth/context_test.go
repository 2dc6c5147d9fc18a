package auth

import (
	"context"
	"testing"
)

func TestWithAuthRoundTrip(t *testing.T) {
	ctx := WithAuth(context.Background(), AuthContext{
		UserID: "user-1",
		Role:   RoleLandlord,
	})

	ac, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected auth context to be present")
	}
	if ac.UserID != "user-1" || ac.Role != RoleLandlord {
		t.Errorf("got %+v", ac)
	}
	if UserID(ctx) != "user-1" {
		t.Errorf("UserID = %s, want user-1", UserID(ctx))
	}
	if !IsLandlord(ctx) {
		t.Error("expected landlord role")
	}
	if IsAdmin(ctx) {
		t.Error("landlord should not be admin")
	}
}

func TestFromContextMissing(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("empty context should have no auth")
	}
	if UserID(context.Background()) != "" {
		t.Error("missing auth should yield empty user id")
	}
	if IsLandlord(context.Background()) {
		t.Error("missing auth should not be landlord")
	}
}
