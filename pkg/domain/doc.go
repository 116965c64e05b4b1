// Package domain contains the core types of the QR validation service: the
// closed sets of accepted upload formats, uploaded files, decoded QR codes and
// the payload sent to the remote identity validator. The types are free of
// infrastructure concerns so they can be shared across packages.
package domain
