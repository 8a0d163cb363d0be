package social

import (
	"google.golang.org/grpc"

	"github.com/oggyb/socialgraph/internal/account"
	pb "github.com/oggyb/socialgraph/internal/api/socialv1"
	"github.com/oggyb/socialgraph/internal/app"
)

// Registrar ties the Social service into the gRPC server
type Registrar struct {
	service *Service
}

// NewRegistrar creates a new Registrar for the Social service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{service: NewSocialService(appCtx)}
}

// Register attaches the Social service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	pb.RegisterSocialServiceServer(s, r.service)
}

func (r *Registrar) ServiceName() string {
	return pb.ServiceName
}

// Authenticator returns the account service the auth interceptor checks
// bearer tokens against.
func (r *Registrar) Authenticator() *account.Service {
	return r.service.Accounts()
}
