package services

// ServiceContainer bundles the service facades handed to route registration.
type ServiceContainer struct {
	User     UserSvcFacade
	Token    TokenSvcFacade
	Product  ProductSvcFacade
	Deposit  DepositSvcFacade
	Purchase PurchaseSvcFacade
}
