//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-relay/domain"
	"context"
	"reflect"
)

type WorkerName string

// Worker doesn't protect itself.
// Can be silly, focused.
type Worker interface {
	Run(ctx context.Context) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging and supervision, avoiding manual naming in the Worker
// interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Frame is one named event pushed to a live connection.
type Frame struct {
	Event string
	Data  any
}

// EventSink is the delivery end of one live connection. Deliver must not
// block the caller beyond its buffering policy; a sink whose connection
// died reports an error and the frame is dropped, never retried.
type EventSink interface {
	Deliver(ctx context.Context, frame Frame) error
}

// Role tags what a connection authenticated as.
type Role string

const (
	RoleUser   Role = "user"
	RoleServer Role = "server"
)

// IRegistry tracks live connections and their identity bindings.
type IRegistry interface {
	Register(connID string, sink EventSink)
	AttachIdentity(connID, identityID string, role Role) error
	FindByIdentity(identityID string) []EventSink
	ForEach(fn func(connID, identityID string, role Role, sink EventSink))
	SinkByConn(connID string) (EventSink, bool)
	Remove(connID string)
}

// IServerCache is the ephemeral, non-authoritative mirror of rooms
// advertised by federated server connections.
type IServerCache interface {
	AddServer(connID string, rooms []domain.Room)
	RemoveServer(connID string)
	RoomsByIDs(roomIDs []string) map[string]domain.Room
	ServerForRoom(roomID string) (string, bool)
	UpdateRoom(connID string, patch domain.Room)
}

// Keypair is an ephemeral asymmetric pair issued by the crypto collaborator.
type Keypair struct {
	Public  string
	Private string
}

// Cryptor is the external crypto microservice. Envelopes are opaque here;
// the relay never touches plaintext message bodies of other users.
type Cryptor interface {
	Encrypt(ctx context.Context, key, plaintext string) (string, error)
	Decrypt(ctx context.Context, envelope string) (string, error)
	GenerateKeypair(ctx context.Context) (Keypair, error)
}

// Uploader is the external blob store. Both calls return the public URL of
// the stored blob; failures surface as errors and the caller decides how
// lenient to be.
type Uploader interface {
	UploadAvatar(ctx context.Context, base64Data string) (string, error)
	UploadFile(ctx context.Context, base64Data, name string) (string, error)
}

// Mailer is fire-and-forget from the relay's perspective.
type Mailer interface {
	SendVerificationCode(ctx context.Context, recipient, code string) error
}

// ExpiryTracker is the external service keeping the public list of
// temporary rooms and their deadlines.
type ExpiryTracker interface {
	RegisterTemporaryRoom(ctx context.Context, roomID string, createdAt string, expirationHours float64, password string) error
}
