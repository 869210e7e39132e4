/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension owns a single configuration object, stored under a key derived
from the extension name. Configuration is loaded from the "conf" section of
the genesis file and can be read by handlers at any time.

Not being able to load a configuration is a critical condition for the
application. Callers should refuse to process a transaction until the
configuration is present.
*/
package gconf
