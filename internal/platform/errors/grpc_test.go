package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestHandleErrorNil(t *testing.T) {
	if err := HandleError(nil, ""); err != nil {
		t.Fatalf("HandleError(nil) = %v, want nil", err)
	}
}

func TestHandleErrorDomain(t *testing.T) {
	err := HandleError(fmt.Errorf("claim: %w", New(CodeAlreadyClaimed, "payout already claimed")), "")
	if got := status.Code(err); got != CodeAlreadyClaimed.GRPCCode() {
		t.Fatalf("code = %v, want %v", got, CodeAlreadyClaimed.GRPCCode())
	}
}

func TestHandleErrorPassesStatus(t *testing.T) {
	in := status.Error(codes.Unavailable, "down")
	if got := status.Code(HandleError(in, "pt-BR")); got != codes.Unavailable {
		t.Fatalf("code = %v, want %v", got, codes.Unavailable)
	}
}

func TestHandleErrorUnknown(t *testing.T) {
	err := HandleError(stderrors.New("disk on fire"), "en-US")
	st := status.Convert(err)
	if st.Code() != codes.Internal {
		t.Fatalf("code = %v, want %v", st.Code(), codes.Internal)
	}
	if st.Message() == "disk on fire" {
		t.Fatal("expected internal details to stay private")
	}
}

func TestIsCodeAndMetadataOf(t *testing.T) {
	err := fmt.Errorf("wrap: %w", WithMetadata(CodeInsufficientFunds, "short", map[string]string{"Account": "alice"}))
	if !IsCode(err, CodeInsufficientFunds) {
		t.Fatal("expected IsCode to match")
	}
	if got := MetadataOf(err)["Account"]; got != "alice" {
		t.Fatalf("metadata Account = %q, want alice", got)
	}
	if MetadataOf(stderrors.New("plain")) != nil {
		t.Fatal("expected nil metadata for plain error")
	}
}
