package app

import (
	"context"
	"encoding/json"

	"staymarket/internal/domain"
	"staymarket/internal/reconcile"
)

// CustomerService covers the customer-lookup flow: fetch, reconcile,
// then impose the typed view.
type CustomerService struct {
	provider domain.ProviderClient
	maps     reconcile.Maps
}

func NewCustomerService(p domain.ProviderClient, maps reconcile.Maps) *CustomerService {
	return &CustomerService{provider: p, maps: maps}
}

func (s *CustomerService) Lookup(ctx context.Context, customerID string) (domain.Customer, error) {
	env, err := s.provider.GetCustomer(ctx, customerID)
	if err != nil {
		return domain.Customer{}, err
	}
	obj, err := reconcile.ReconcileOne(env, "Customer", reconcile.EndpointCustomer, s.maps.Provider, nil, false)
	if err != nil {
		return domain.Customer{}, err
	}
	var c domain.Customer
	return c, decodeObject(obj, &c)
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	env, err := s.provider.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	objs, err := reconcile.ReconcileList(env, "Customer", reconcile.EndpointCustomers, s.maps.Provider, nil)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Customer, len(objs))
	for i, obj := range objs {
		if err := decodeObject(obj, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// decodeObject imposes a typed domain view on a reconciled object. The
// reconciler deliberately works untyped; typing happens only here.
func decodeObject(obj reconcile.Object, dst any) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
