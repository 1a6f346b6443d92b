package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Sequence     SequenceSvcFacade
	Payment      PaymentSvcFacade
	Grading      GradingSvcFacade
	Salary       SalarySvcFacade
	Notification NotificationSvcFacade
	Student      StudentSvcFacade
	Teacher      TeacherSvcFacade
	Certificate  CertificateSvcFacade
	User         UserSvcFacade
	Token        TokenSvcFacade
	GoogleOAuth  GoogleOAuthSvcFacade
}
