package config

type WorkerKeyStruct struct {
	CertificateQueue string
}

var WorkerKey = &WorkerKeyStruct{
	CertificateQueue: "render_certificates_queue",
}
