package department

import "context"

// DepartmentService is used by HR to maintain the organisation chart.
type DepartmentService interface {
	Create(ctx context.Context, req UpsertDepartmentRequest) (DepartmentResponse, error)
	Update(ctx context.Context, req UpsertDepartmentRequest) (DepartmentResponse, error)
	Get(ctx context.Context, id int64) (DepartmentResponse, error)
	List(ctx context.Context) ([]DepartmentResponse, error)
}
